package generator

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// visibilityCSS keeps AOS-animated elements visible when the AOS script never
// runs (CDN blocked, JS disabled). Without it every [data-aos] element stays
// at opacity 0 forever.
const visibilityCSS = `<style>
  [data-aos] { opacity: 1 !important; transform: none !important; transition-property: opacity, transform; }
  html.aos-ready [data-aos] { opacity: 0; }
</style>`

// visibilityJS marks the document once AOS is actually initialized so the
// CSS fallback above only yields to the animation when it can run.
const visibilityJS = `<script>
  if (window.AOS) { document.documentElement.classList.add('aos-ready'); AOS.init({ duration: 800, once: true }); }
</script>`

// EnsureVisibilityFixes checks whether the generated page protects AOS-animated
// content against a failed script load, and injects the fallback when it does
// not. Returns the (possibly modified) document and whether injection happened.
func EnsureVisibilityFixes(html string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// Not parseable as HTML at all; leave it alone, persistence still
		// records what the model produced
		return html, false
	}

	if doc.Find("[data-aos]").Length() == 0 {
		return html, false
	}

	// Pages that already gate their animations (either our marker class or a
	// hand-rolled opacity guard) are left untouched
	if strings.Contains(html, "aos-ready") {
		return html, false
	}

	out := html
	if idx := lastIndexFold(out, "</head>"); idx >= 0 {
		out = out[:idx] + visibilityCSS + "\n" + out[idx:]
	} else {
		out = visibilityCSS + "\n" + out
	}
	if idx := lastIndexFold(out, "</body>"); idx >= 0 {
		out = out[:idx] + visibilityJS + "\n" + out[idx:]
	} else {
		out = out + "\n" + visibilityJS
	}
	return out, true
}

// lastIndexFold is strings.LastIndex over a case-insensitive needle
func lastIndexFold(s, substr string) int {
	return strings.LastIndex(strings.ToLower(s), strings.ToLower(substr))
}
