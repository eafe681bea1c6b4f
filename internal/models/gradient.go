package models

import (
	"math/rand"
)

// Gradients is the fixed palette of cosmetic card gradients. A link keeps
// the gradient it was assigned at creation so its appearance is stable
// across reloads.
var Gradients = []string{
	"from-[#FF6B6B] to-[#4ECDC4]",
	"from-[#A8E6CF] to-[#FFD3B6]",
	"from-[#FFAAA5] to-[#FFD3B6]",
	"from-[#3498db] to-[#2ecc71]",
	"from-[#e74c3c] to-[#f1c40f]",
	"from-[#9b59b6] to-[#3498db]",
	"from-[#1abc9c] to-[#3498db]",
}

// RandomGradient picks a gradient tag from the palette.
func RandomGradient() string {
	return Gradients[rand.Intn(len(Gradients))]
}

// IsValidGradient reports whether tag belongs to the palette.
func IsValidGradient(tag string) bool {
	for _, g := range Gradients {
		if g == tag {
			return true
		}
	}
	return false
}
