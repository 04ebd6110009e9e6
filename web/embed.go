package web

import "embed"

// StaticFS embeds the browser client (html/js/css).
//
//go:embed static/*
var StaticFS embed.FS
