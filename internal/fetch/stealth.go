package fetch

import (
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
)

// RandomDelay pauses execution for a random time between min and max (milliseconds)
func RandomDelay(min, max int) {
	if min >= max {
		time.Sleep(time.Duration(min) * time.Millisecond)
		return
	}
	duration := time.Duration(rand.Intn(max-min)+min) * time.Millisecond
	time.Sleep(duration)
}

// SmoothScroll simulates human scrolling and triggers lazy-loaded content
func SmoothScroll(page playwright.Page) {
	page.Mouse().Wheel(0, 500)
	RandomDelay(400, 900)

	//scroll up a tiny bit (human-like correction)
	page.Mouse().Wheel(0, -200)
	RandomDelay(300, 700)

	page.Evaluate("window.scrollTo(0, document.body.scrollHeight)")
	RandomDelay(400, 900)
}
