package domain

// ArticleStub is a candidate article discovered on a listing page.
type ArticleStub struct {
	Title  string
	Link   string
	Date   string
	Source string
}

// ArticleContent is a stub enriched with the article's full body text.
// Content falls back to the title when body extraction yields nothing longer.
type ArticleContent struct {
	ArticleStub
	Content string
}
