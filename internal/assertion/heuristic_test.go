package assertion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeuristic(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		want     bool
	}{
		{"key phrase in msg", "成功：登录成功", `{"code":0,"msg":"登录成功"}`, true},
		{"msg inside key phrase", "失败：用户名或密码错误。", `{"msg":"密码错误"}`, true},
		{"ascii colon key phrase", "error: invalid token.", `{"message":"invalid token"}`, true},
		{"success prefix decides", "成功返回用户列表", `{"msg":"查询成功"}`, true},
		{"success prefix rejects failure", "成功返回用户列表", `{"msg":"查询失败"}`, false},
		{"failure prefix decides", "失败，参数缺失", `{"msg":"请求失败"}`, true},
		{"msg contained in expected", "returns ok with data", `{"msg":"ok"}`, true},
		{"no msg falls back to containment", "created", `{"status":"created"}`, true},
		{"plain text containment", "not found", "404 not found", true},
		{"no match", "created", `{"msg":"denied"}`, false},
		{"blank msg ignored", "created", `{"msg":"  ","status":"created"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Heuristic(tt.expected, tt.actual))
		})
	}
}

func TestKeyPhrase(t *testing.T) {
	assert.Equal(t, "登录成功", keyPhrase("成功：登录成功。"))
	assert.Equal(t, "b", keyPhrase("x: a: b."))
	assert.Equal(t, "", keyPhrase("no colon"))
	assert.Equal(t, "全角", keyPhrase("a: b：全角"))
}
