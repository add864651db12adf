package handler

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/api/flash"
	"github.com/csemotors/dealership/internal/api/middleware"
	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/token"
)

// NavProvider supplies the classification list rendered in the navigation of
// every page.
type NavProvider interface {
	Nav(ctx context.Context) ([]*domain.Classification, error)
}

// pageBuilder assembles the data record every template starts from: title,
// navigation, resolved claims, and any pending flash notice.
type pageBuilder struct {
	nav NavProvider
	log zerolog.Logger
}

func (p *pageBuilder) data(c echo.Context, title string) echo.Map {
	m := echo.Map{
		"Title":  title,
		"Notice": flash.Take(c),
	}

	// A nav failure degrades to a bare navigation rather than taking down
	// the page.
	nav, err := p.nav.Nav(c.Request().Context())
	if err != nil {
		p.log.Warn().Err(err).Msg("nav lookup failed")
	} else {
		m["Nav"] = nav
	}

	if claims, ok := c.Get(middleware.ClaimsKey).(*token.Claims); ok {
		m["Claims"] = claims
	}
	return m
}
