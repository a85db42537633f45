package hugedomains

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/domain-tracker/internal/entity"
	"github.com/user/domain-tracker/pkg/domainutil"
)

var nextTokenRe = regexp.MustCompile(`n=([^&"]+)`)

// ParseListing extracts the domain rows and the pagination token from one
// marketplace listing page.
func ParseListing(html string) ([]entity.CapturedDomain, string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, "", err
	}

	var captured []entity.CapturedDomain
	doc.Find("div.domain-row").Each(func(i int, row *goquery.Selection) {
		link := row.Find("span.domain > a.link").First()
		price := row.Find("span.domain > span.price").First()
		if link.Length() == 0 || price.Length() == 0 {
			return
		}

		name := domainutil.Normalize(link.Text())
		if name == "" {
			return
		}
		captured = append(captured, entity.CapturedDomain{
			Name:     name,
			PriceUSD: domainutil.ParsePrice(price.Text()),
			Length:   domainutil.SLDLength(name),
		})
	})

	nextToken := ""
	if href, ok := doc.Find("a.next-link, a.next-serch-link").First().Attr("href"); ok {
		if m := nextTokenRe.FindStringSubmatch(href); m != nil {
			nextToken = m[1]
		}
	}
	return captured, nextToken, nil
}
