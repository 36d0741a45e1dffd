package openfoodfacts

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"nutritrack/internal/domain"
)

var (
	productHrefPattern = regexp.MustCompile(`/product/(\d{4,})`)
	nutriscorePattern  = regexp.MustCompile(`nutriscore-([a-e])`)
)

// scrapeSearchPage extracts product links from the HTML search result page.
// It is the last resort when both JSON search endpoints come back empty.
func scrapeSearchPage(r io.Reader, limit int) ([]domain.SearchHit, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: parse search page: %v", domain.ErrUpstream, err)
	}

	seen := make(map[string]struct{})
	hits := []domain.SearchHit{}
	doc.Find(`a[href*="/product/"]`).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		m := productHrefPattern.FindStringSubmatch(href)
		if m == nil {
			return true
		}
		code := m[1]
		if _, dup := seen[code]; dup {
			return true
		}
		seen[code] = struct{}{}
		hits = append(hits, hitFromLink(code, a))
		return len(hits) < limit
	})
	return hits, nil
}

func hitFromLink(code string, a *goquery.Selection) domain.SearchHit {
	name := first(a.Find(".list_product_name"))
	if name == "" {
		name, _ = a.Attr("title")
		name = strings.TrimSpace(name)
	}
	if name == "" {
		name = collapse(a.Text())
	}
	if name == "" {
		name = "N/A"
	}

	brands := "N/A"
	if name != "N/A" {
		// Result titles read "Name - Brand - Quantity".
		if parts := strings.Split(name, " - "); len(parts) > 1 {
			name = strings.TrimSpace(parts[0])
			brands = strings.TrimSpace(parts[1])
		}
	}

	grade := ""
	a.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src, _ := img.Attr("src")
		if m := nutriscorePattern.FindStringSubmatch(src); m != nil {
			grade = strings.ToUpper(m[1])
			return false
		}
		return true
	})

	return domain.SearchHit{Code: code, Name: name, Brands: brands, Nutriscore: grade}
}

func first(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return collapse(sel.First().Text())
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
