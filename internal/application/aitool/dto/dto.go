package dto

import (
	usagedto "github.com/boomerhub/boomerhub/internal/application/usage/dto"
)

// RunToolRequest is the input to an AI tool. Which fields are required depends on the tool.
type RunToolRequest struct {
	Text           string `json:"text" validate:"required,max=20000"`
	TargetLanguage string `json:"target_language" validate:"max=64"`
	Reference      string `json:"reference" validate:"max=20000"`
	MaxItems       int    `json:"max_items" validate:"omitempty,min=1,max=50"`
}

// RunToolResponse carries the tool output and the caller's quota after the charge
type RunToolResponse struct {
	Tool   string                        `json:"tool"`
	Output string                        `json:"output"`
	Model  string                        `json:"model,omitempty"`
	Usage  *usagedto.UsageStatusResponse `json:"usage"`
}

// ToolListResponse lists the tools that can be run
type ToolListResponse struct {
	Tools []string `json:"tools"`
}
