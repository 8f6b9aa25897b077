package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newAdmin(t *testing.T) (*LangAdmin, *stubSettingsRepository) {
	t.Helper()
	repo := &stubSettingsRepository{}
	store := NewSettingsStore(repo, nil)
	store.Load(context.Background())
	return NewLangAdmin(store), repo
}

func run(a *LangAdmin, text string) string {
	return a.Execute(context.Background(), AdminRequest{Args: strings.Fields(text)})
}

func TestLangAdminEnableThenStatus(t *testing.T) {
	a, _ := newAdmin(t)

	assert.Equal(t, "成功在群 12345 中 启用 'standard' 模式。", run(a, "enable standard 12345"))
	assert.Equal(t, "群 12345 的状态：\n- Standard 模式: 开启\n- CTE 模式: 关闭", run(a, "status 12345"))

	assert.Equal(t, "成功在群 12345 中 禁用 'standard' 模式。", run(a, "DISABLE Standard 12345"))
	assert.Equal(t, "群 12345 的状态：\n- Standard 模式: 关闭\n- CTE 模式: 关闭", run(a, "status 12345"))
}

func TestLangAdminHelpAndBadArgs(t *testing.T) {
	a, _ := newAdmin(t)

	assert.Equal(t, LangHelpText, run(a, ""))

	for _, text := range []string{
		"unknown",
		"enable",
		"enable standard",
		"enable fancy 123",
		"enable 123",
		"enable standard abc",
		"status",
		"status abc",
		"add_user",
		"add_user bob",
		"remove_user",
	} {
		assert.Equal(t, LangBadArgsMessage, run(a, text), text)
	}
}

func TestLangAdminDefaultsToCurrentGroup(t *testing.T) {
	a, _ := newAdmin(t)
	ctx := context.Background()

	got := a.Execute(ctx, AdminRequest{Args: []string{"enable", "cte"}, CurrentGroupID: "-1001"})
	assert.Equal(t, "成功在群 -1001 中 启用 'cte' 模式。", got)

	got = a.Execute(ctx, AdminRequest{Args: []string{"status"}, CurrentGroupID: "-1001"})
	assert.Equal(t, "群 -1001 的状态：\n- Standard 模式: 关闭\n- CTE 模式: 开启", got)

	// 显式 ID 优先于当前群组
	got = a.Execute(ctx, AdminRequest{Args: []string{"status", "-2002"}, CurrentGroupID: "-1001"})
	assert.Equal(t, "群 -2002 的状态：\n- Standard 模式: 关闭\n- CTE 模式: 关闭", got)
}

func TestLangAdminListGroups(t *testing.T) {
	a, _ := newAdmin(t)

	assert.Equal(t, LangNoGroupsMessage, run(a, "list_groups"))

	run(a, "enable standard 200")
	run(a, "enable cte -100")
	run(a, "enable standard -100")

	assert.Equal(t, "已设定的群组列表：\n- -100: S=✅, C=✅\n- 200: S=✅, C=❌", run(a, "list_groups"))
}

func TestLangAdminBlacklist(t *testing.T) {
	a, repo := newAdmin(t)

	assert.Equal(t, LangNoUsersMessage, run(a, "list_users"))
	assert.Equal(t, "成功将用户 42 加入黑名单。", run(a, "add_user 42"))
	assert.Equal(t, "用户 42 已在黑名单中。", run(a, "add_user 42"))
	assert.Equal(t, "成功将用户 7 加入黑名单。", run(a, "add_user 7"))
	assert.Equal(t, "用户黑名单列表：\n42\n7", run(a, "list_users"))
	assert.Equal(t, []string{"42", "7"}, repo.users)

	assert.Equal(t, "成功将用户 42 从黑名单中移除。", run(a, "remove_user 42"))
	assert.Equal(t, "用户 42 不在黑名单中。", run(a, "remove_user 42"))
	assert.Equal(t, []string{"7"}, repo.users)
}

func TestLangAdminBlacklistReplyTarget(t *testing.T) {
	a, _ := newAdmin(t)

	got := a.Execute(context.Background(), AdminRequest{Args: []string{"add_user"}, ReplyUserID: "555"})
	assert.Equal(t, "成功将用户 555 加入黑名单。", got)
}

func TestLangAdminPersistFailure(t *testing.T) {
	repo := &stubSettingsRepository{saveErr: errors.New("read-only")}
	store := NewSettingsStore(repo, nil)
	store.Load(context.Background())
	a := NewLangAdmin(store)

	got := run(a, "enable standard 1")
	assert.True(t, strings.HasPrefix(got, "成功在群 1 中 启用 'standard' 模式。"))
	assert.Contains(t, got, "保存失败")
}
