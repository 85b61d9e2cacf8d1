package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shope/internal/carousel"
	"github.com/Skotchmaster/shope/internal/transport"
)

type CarouselHTTP struct {
	Carousel *carousel.Carousel
}

func (h *CarouselHTTP) GetCarousel(c echo.Context) error {
	idx, banner := h.Carousel.Current()
	return c.JSON(http.StatusOK, transport.CarouselResponse{
		Index:   idx,
		Banner:  banner,
		Banners: h.Carousel.Banners(),
	})
}
