package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// extractImage pulls a usable image URL from an entry, trying the
// conventional locations in preference order: feed-level media metadata,
// media extension elements, enclosures, then inline markup in content and
// description. First match wins.
func extractImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}

	if url := mediaExtensionURL(item); url != "" {
		return url
	}

	for _, enc := range item.Enclosures {
		if enc == nil {
			continue
		}
		if strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}

	if url := firstInlineImage(item.Content); url != "" {
		return url
	}
	return firstInlineImage(item.Description)
}

func mediaExtensionURL(item *gofeed.Item) string {
	media, ok := item.Extensions["media"]
	if !ok {
		return ""
	}
	for _, name := range []string{"content", "thumbnail"} {
		for _, ext := range media[name] {
			if url := ext.Attrs["url"]; url != "" {
				return url
			}
		}
	}
	return ""
}

func firstInlineImage(htmlText string) string {
	if !strings.Contains(htmlText, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return src
}
