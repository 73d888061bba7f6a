/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// Errors surfaced to the originating session as an "error" event. None of
// them are fatal, and none of them leave room state changed.
var (
	errRoomNotFound   = errors.New("room not found")
	errUnknownToken   = errors.New("no player found for that token")
	errRoomFull       = errors.New("room is full")
	errEmptyWord      = errors.New("enter a word")
	errWordTaken      = errors.New("word already taken, choose another")
	errNotAllReady    = errors.New("not everyone has submitted a word")
	errTooFewPlayers  = errors.New("minimum 2 players")
	errAlreadyPlaying = errors.New("game already in progress")
	errWrongGuess     = errors.New("wrong guess, try again")
	errCannotDerange  = errors.New("cannot derange a single element")
	errMalformed      = errors.New("malformed message")
)

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

func newPage(title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
	htmlBody.WriteString(`<style>html,body{height:100%;margin:0;font-family:sans-serif;}`)
	htmlBody.WriteString(`body{display:flex;align-items:center;justify-content:center;text-align:center;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", title))
	htmlBody.WriteString(fmt.Sprintf("<body><main>%s</main></body></html>", body))

	return htmlBody.String()
}
