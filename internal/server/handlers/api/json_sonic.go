//go:build sonic

package api

import (
	"github.com/bytedance/sonic"
)

var jsonMarshal = sonic.Marshal
