package services

import (
	"io"

	"redfin-finder/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLoggerTo(io.Discard, false) }

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }
func strPtr(v string) *string     { return &v }
