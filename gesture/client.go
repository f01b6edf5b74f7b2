// ABOUTME: Scroll arbitration client attached to one scrollable content surface
// ABOUTME: Tracks settled offsets and predictions, and vetoes scrolls the header absorbs

// Package gesture classifies the scroll gestures of a content surface and
// forwards arbitration requests to the shared accordion header.
package gesture

import "accordion-pager/header"

// Point is a content offset or velocity in points
type Point struct {
	X float64
	Y float64
}

// Surface is a scrollable content surface whose offset the client may override
type Surface interface {
	ContentOffset() Point
	SetContentOffset(p Point, animated bool)
}

// Client holds the gesture context of a single surface. Each surface owns
// its own client; all clients of a screen share one header delegate.
type Client struct {
	delegate header.Delegate // Not owned; may be nil

	previousOffsetY       float64 // Last settled vertical offset
	isDecelerating        bool
	predictedTargetOffset Point // Valid between drag end and deceleration end

	debugf func(string, ...interface{})
}

// NewClient creates a client bound to the given delegate (which may be nil)
func NewClient(delegate header.Delegate) *Client {
	return &Client{
		delegate: delegate,
		debugf:   func(string, ...interface{}) {},
	}
}

// SetDebugf installs a debug logger
func (c *Client) SetDebugf(debugf func(string, ...interface{})) {
	if debugf != nil {
		c.debugf = debugf
	}
}

// PreviousOffsetY returns the last settled vertical offset
func (c *Client) PreviousOffsetY() float64 { return c.previousOffsetY }

// IsDecelerating reports whether the surface is in its momentum phase
func (c *Client) IsDecelerating() bool { return c.isDecelerating }

// PredictedTargetOffset returns the resting offset predicted at drag end
func (c *Client) PredictedTargetOffset() Point { return c.predictedTargetOffset }

// WillBeginDragging is called when the user starts a drag
func (c *Client) WillBeginDragging(_ Surface) {}

// WillEndDragging records where deceleration is predicted to come to rest
func (c *Client) WillEndDragging(_ Surface, _ Point, target Point) {
	c.predictedTargetOffset = target
}

// DidEndDragging settles the offset unless momentum follows
func (c *Client) DidEndDragging(s Surface, decelerate bool) {
	if !decelerate {
		c.previousOffsetY = s.ContentOffset().Y
		return
	}

	c.isDecelerating = true
}

// DidEndDecelerating settles the offset once momentum has finished
func (c *Client) DidEndDecelerating(s Surface) {
	c.isDecelerating = false
	c.previousOffsetY = s.ContentOffset().Y
}

// DidScroll is the arbitration point, called synchronously on every offset change
func (c *Client) DidScroll(s Surface) {
	if c.delegate == nil {
		return
	}

	offsetY := s.ContentOffset().Y

	direction := header.Downward
	if offsetY > c.previousOffsetY {
		direction = header.Upward
	}

	// Only a surface pulled past its top or pushed while the header is open is
	// arbitrated; anything else is the content scrolling within its own bounds.
	if !((direction == header.Downward && offsetY < 0) || (direction == header.Upward && offsetY > 0)) {
		c.previousOffsetY = offsetY
		return
	}

	req := header.Request{
		OffsetY:                   offsetY - c.previousOffsetY,
		Direction:                 direction,
		IsDecelerating:            c.isDecelerating,
		PredictedRemainingOffsetY: c.predictedTargetOffset.Y - offsetY,
	}

	if !header.Arbitrate(c.delegate, req) {
		c.debugf("[GESTURE] Header absorbed %.2f (%s, decelerating=%v); resetting offset to %.2f",
			req.OffsetY, direction, c.isDecelerating, c.previousOffsetY)
		s.SetContentOffset(Point{X: 0, Y: c.previousOffsetY}, false)
	}
}
