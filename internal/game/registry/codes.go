package registry

import (
	"math/rand"
	"strings"
)

const codeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewCode 生成未被占用的大写房间码；小规模下碰撞概率极低，循环只是兜底
func (reg *Registry) NewCode(n int, rnd *rand.Rand) string {
	for {
		b := make([]byte, n)
		for i := range b {
			b[i] = codeChars[rnd.Intn(len(codeChars))]
		}
		code := string(b)

		reg.mu.RLock()
		_, taken := reg.rooms[code]
		reg.mu.RUnlock()
		if !taken {
			return code
		}
	}
}

// Normalize 客户端输入的房间码统一转大写再查表
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
