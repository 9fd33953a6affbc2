package main

import (
	"context"
)

const welcomeMessage = "Welcome to the weather dashboard API"

// MessageOutput is a bare {"message": ...} body
type MessageOutput struct {
	Body struct {
		Message string `json:"message" example:"pong" doc:"Response message"`
	}
}

func newMessageOutput(message string) *MessageOutput {
	out := &MessageOutput{}
	out.Body.Message = message
	return out
}

// handlePing is the liveness check; it touches no upstream or store
func (app *App) handlePing(ctx context.Context, input *struct{}) (*MessageOutput, error) {
	return newMessageOutput("pong"), nil
}

func (app *App) handleRoot(ctx context.Context, input *struct{}) (*MessageOutput, error) {
	return newMessageOutput(welcomeMessage), nil
}
