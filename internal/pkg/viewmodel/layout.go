package viewmodel

import "github.com/gofiber/fiber/v2"

// Layout carries the fields every page template needs for the shared chrome.
type Layout struct {
	Page          string
	SiteTitle     string
	FromProtected bool
	IsError       bool
	Msg           fiber.Map
	Username      string
	IsAdmin       bool
	IsPotter      bool
	OGViewModel   *OpenGraph
}

// OpenGraph holds social sharing metadata for a page.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	URL         string
}
