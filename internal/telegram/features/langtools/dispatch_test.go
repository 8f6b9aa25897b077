package langtools

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"lang_bot/internal/convert"
	"lang_bot/internal/telegram/models"
	"lang_bot/internal/translate"
)

var t2s = convert.Func(strings.NewReplacer("這", "这", "體", "体", "個", "个", "們", "们").Replace)

func direct(text string) *models.Message {
	return &models.Message{Text: text, Origin: models.OriginDirect, SenderID: "42"}
}

func group(text string) *models.Message {
	return &models.Message{Text: text, Origin: models.OriginGroup, SenderID: "42", GroupID: "-100"}
}

func TestDecideDirect(t *testing.T) {
	engine := NewEngine(t2s, "en")

	tests := []struct {
		name string
		text string
		want Action
	}{
		{
			name: "foreign text translates with auto target",
			text: "  hello world123  ",
			want: Action{Kind: ActionTranslate, Text: "hello world123", TargetLang: translate.TargetAuto},
		},
		{
			name: "traditional text is converted",
			text: "這是繁體",
			want: Action{Kind: ActionSendText, Text: "这是繁体"},
		},
		{
			name: "unchanged conversion sends nothing",
			text: "你好世界",
			want: Action{},
		},
		{
			name: "url is ignored",
			text: "check http://example.com now",
			want: Action{},
		},
		{
			name: "www url is ignored",
			text: "這個 www.example.com",
			want: Action{},
		},
		{
			name: "command is ignored",
			text: "/translate hello everyone",
			want: Action{},
		},
		{
			name: "blank is ignored",
			text: "   ",
			want: Action{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.Decide(direct(tt.text), Snapshot{}))
		})
	}
}

func TestDecideGroup(t *testing.T) {
	engine := NewEngine(t2s, "en")

	standard := models.GroupSettings{Standard: true}
	cte := models.GroupSettings{CTE: true}
	both := models.GroupSettings{Standard: true, CTE: true}

	tests := []struct {
		name     string
		text     string
		settings models.GroupSettings
		want     Action
	}{
		{
			name:     "no settings ignores foreign text",
			text:     "hello everyone",
			settings: models.GroupSettings{},
			want:     Action{},
		},
		{
			name:     "no settings ignores traditional text",
			text:     "這是繁體",
			settings: models.GroupSettings{},
			want:     Action{},
		},
		{
			name:     "standard translates foreign text",
			text:     "hello everyone",
			settings: standard,
			want:     Action{Kind: ActionTranslate, Text: "hello everyone", TargetLang: translate.TargetAuto},
		},
		{
			name:     "standard converts traditional text",
			text:     "這是繁體",
			settings: standard,
			want:     Action{Kind: ActionSendText, Text: "这是繁体"},
		},
		{
			name:     "standard without change sends nothing",
			text:     "你好世界",
			settings: standard,
			want:     Action{},
		},
		{
			name:     "cte only translates native text to en",
			text:     "你好世界啊",
			settings: cte,
			want:     Action{Kind: ActionTranslate, Text: "你好世界啊", TargetLang: "en"},
		},
		{
			name:     "cte only never converts",
			text:     "hi 這個 ok",
			settings: cte,
			want:     Action{},
		},
		{
			name:     "cte only ignores foreign text",
			text:     "hello everyone",
			settings: cte,
			want:     Action{},
		},
		{
			name:     "standard wins over cte for foreign text",
			text:     "hello everyone",
			settings: both,
			want:     Action{Kind: ActionTranslate, Text: "hello everyone", TargetLang: translate.TargetAuto},
		},
		{
			name:     "cte wins over conversion for native text",
			text:     "這是繁體字啊",
			settings: both,
			want:     Action{Kind: ActionTranslate, Text: "這是繁體字啊", TargetLang: "en"},
		},
		{
			name:     "both falls back to conversion",
			text:     "ok 這個 ok",
			settings: both,
			want:     Action{Kind: ActionSendText, Text: "ok 这个 ok"},
		},
		{
			name:     "url ignored even with settings",
			text:     "see https://example.com/page",
			settings: both,
			want:     Action{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Decide(group(tt.text), Snapshot{Group: tt.settings})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecideBlacklistOverridesSettings(t *testing.T) {
	engine := NewEngine(t2s, "en")
	snap := Snapshot{Group: models.GroupSettings{Standard: true, CTE: true}, Blacklisted: true}

	assert.Equal(t, Action{}, engine.Decide(group("hello everyone"), snap))
	assert.Equal(t, Action{}, engine.Decide(direct("hello everyone"), Snapshot{Blacklisted: true}))
	assert.Equal(t, Action{}, engine.Decide(direct("這是繁體"), Snapshot{Blacklisted: true}))
}

func TestDecideCustomCTETarget(t *testing.T) {
	engine := NewEngine(nil, "ja")
	got := engine.Decide(group("你好世界啊"), Snapshot{Group: models.GroupSettings{CTE: true}})
	assert.Equal(t, Action{Kind: ActionTranslate, Text: "你好世界啊", TargetLang: "ja"}, got)

	// 未配置转换器时不会产生转换动作
	got = engine.Decide(direct("這是繁體"), Snapshot{})
	assert.Equal(t, Action{}, got)
}

func TestActionKindString(t *testing.T) {
	assert.Equal(t, "none", ActionNone.String())
	assert.Equal(t, "send_text", ActionSendText.String())
	assert.Equal(t, "translate", ActionTranslate.String())
}
