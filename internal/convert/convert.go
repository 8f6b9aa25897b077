// Package convert 提供繁体到简体的中文字形转换
package convert

import (
	"fmt"

	"github.com/liuzl/gocc"

	"lang_bot/internal/logger"
)

// Converter 将文本转换为简体中文；转换失败时返回原文
type Converter interface {
	Convert(text string) string
}

// Func 将普通函数适配为 Converter
type Func func(string) string

// Convert 调用函数本身
func (f Func) Convert(text string) string { return f(text) }

// Identity 原样返回文本，用于字典不可用时
var Identity Converter = Func(func(s string) string { return s })

type engine interface {
	Convert(in string) (string, error)
}

// OpenCC 基于 OpenCC t2s 字典的转换器
type OpenCC struct {
	cc engine
}

// NewOpenCC 加载 t2s 字典
// dir 为字典根目录（包含 config/ 与 dictionary/），为空时使用 gocc 的默认目录
func NewOpenCC(dir string) (*OpenCC, error) {
	if dir != "" {
		*gocc.Dir = dir
	}
	cc, err := gocc.New("t2s")
	if err != nil {
		return nil, fmt.Errorf("failed to load opencc t2s dictionary from %s: %w", *gocc.Dir, err)
	}
	return &OpenCC{cc: cc}, nil
}

// Convert 繁体转简体，出错时返回原文
func (o *OpenCC) Convert(text string) string {
	out, err := o.cc.Convert(text)
	if err != nil {
		logger.L().Warnf("OpenCC convert failed, keeping original text: %v", err)
		return text
	}
	return out
}

// Load 按配置加载转换器
// 显式指定 dir 时加载失败直接返回错误；未指定时退化为 Identity，
// 此时繁简转换不可用，记录 Error 日志
func Load(dir string) (Converter, error) {
	cc, err := NewOpenCC(dir)
	if err == nil {
		logger.L().Infof("OpenCC t2s dictionary loaded from %s", *gocc.Dir)
		return cc, nil
	}
	if dir != "" {
		return nil, err
	}
	logger.L().Errorf("Script conversion disabled, set OPENCC_DIR to a gocc checkout: %v", err)
	return Identity, nil
}

// Active 转换器是否真正执行繁简转换
func Active(c Converter) bool {
	_, ok := c.(*OpenCC)
	return ok
}
