package goquery

// Signature is a structural pattern for a publishing platform's content
// container.
type Signature struct {
	Name     string
	Selector string
}

// DefaultSignatures are ordered from platform-specific containers to
// generic ones. Earlier signatures win ties.
var DefaultSignatures = []Signature{
	// WeChat public accounts
	{Name: "rich_media_content", Selector: `div[class*="rich_media_content"]`},
	{Name: "js_content", Selector: `div#js_content`},

	// Provincial government portals
	{Name: "tys-main-zt-show", Selector: `div[class*="tys-main-zt-show"]`},
	{Name: "tys-main", Selector: `div[class*="tys-main"]`},

	// TRS and common CMS classes
	{Name: "TRS_Editor", Selector: `div[class*="TRS_Editor"]`},
	{Name: "TRS_UEDITOR", Selector: `div[class*="TRS_UEDITOR"]`},
	{Name: "ucontent", Selector: `div[class*="ucontent"]`},
	{Name: "article-content", Selector: `div[class*="article-content"]`},
	{Name: "news-content", Selector: `div[class*="news-content"]`},
	{Name: "detail-content", Selector: `div[class*="detail-content"]`},
	{Name: "content-text", Selector: `div[class*="content-text"]`},
	{Name: "pages_content", Selector: `div[class*="pages_content"]`},
	{Name: "zwgk_content", Selector: `div[class*="zwgk_content"]`},
	{Name: "content_detail", Selector: `div[class*="content_detail"]`},
	{Name: "text_content", Selector: `div[class*="text_content"]`},
	{Name: "main-content", Selector: `div[class*="main-content"]`},
	{Name: "main_content", Selector: `div[class*="main_content"]`},
	{Name: "view-content", Selector: `div[class*="view-content"]`},
	{Name: "info-content", Selector: `div[class*="info-content"]`},

	// Well-known ids
	{Name: "Zoom", Selector: `div#Zoom`},
	{Name: "content", Selector: `div#content`},
	{Name: "article", Selector: `div#article`},
	{Name: "id*=content", Selector: `div[id*="content"]`},
	{Name: "id*=article", Selector: `div[id*="article"]`},

	// Semantic elements
	{Name: "article", Selector: `article`},
	{Name: "main", Selector: `main`},

	{Name: "class*=content", Selector: `div[class*="content"]`},
}
