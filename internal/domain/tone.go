package domain

// Tone is the colour hint a renderer uses for chips and alerts.
type Tone string

const (
	ToneDefault Tone = "default"
	ToneSuccess Tone = "success"
	ToneError   Tone = "error"
)
