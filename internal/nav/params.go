// Package nav carries a product between screens as flat string parameters.
package nav

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/Skotchmaster/shope/internal/models"
)

const (
	KeyID    = "id"
	KeyName  = "name"
	KeyPrice = "price"
	KeyImage = "image"
)

type Params struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Image string `json:"image"`
}

func FromProduct(p models.Product) Params {
	return Params{
		ID:    p.ID,
		Name:  p.Name,
		Price: strconv.FormatFloat(p.Price, 'f', -1, 64),
		Image: p.ImageURI,
	}
}

func FromValues(v url.Values) Params {
	return Params{
		ID:    v.Get(KeyID),
		Name:  v.Get(KeyName),
		Price: v.Get(KeyPrice),
		Image: v.Get(KeyImage),
	}
}

func (p Params) Values() url.Values {
	v := url.Values{}
	v.Set(KeyID, p.ID)
	v.Set(KeyName, p.Name)
	v.Set(KeyPrice, p.Price)
	v.Set(KeyImage, p.Image)
	return v
}

// Product rebuilds the product. ok is false when a parameter is missing or the
// price is not a finite non-negative number, in which case callers skip the mutation.
func (p Params) Product() (models.Product, bool) {
	if p.ID == "" || p.Name == "" || p.Price == "" || p.Image == "" {
		return models.Product{}, false
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(p.Price), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return models.Product{}, false
	}
	return models.Product{ID: p.ID, Name: p.Name, Price: price, ImageURI: p.Image}, true
}
