package test

import (
	"math/rand"
	"strings"
)

const validTokens = "fn;main;fib_iter;(;);{;};,;let;=;==;!=;<;<=;>;>=;+;-;*;/;%;!;if;while;return;print;time;true;false;0;7;123;9223372036854775807;# a comment\n;\n"

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}
