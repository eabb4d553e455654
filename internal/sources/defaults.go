package sources

import "github.com/Redoy0/political-violence-monitor/internal/domain"

// DefaultSources is the built-in registry of Bangladeshi news outlets with
// their politics-section listing pages and extraction selectors. Selector
// groups list alternatives for differently-templated pages of the same site.
var DefaultSources = []domain.Source{
	{
		Name: "Prothom Alo",
		URL:  "https://www.prothomalo.com/politics",
		Selectors: domain.SelectorConfig{
			Articles: "article",
			Title:    "h2 a, h3 a",
			Link:     "h2 a, h3 a",
			Date:     ".time",
			Content:  ".story-element-text",
		},
		Enabled: true,
	},
	{
		Name: "Daily Star",
		URL:  "https://www.thedailystar.net/politics",
		Selectors: domain.SelectorConfig{
			Articles: ".story-card",
			Title:    ".story-title a",
			Link:     ".story-title a",
			Date:     ".time-stamp",
			Content:  ".story-content",
		},
		Enabled: true,
	},
	{
		Name: "Kaler Kantho",
		URL:  "https://www.kalerkantho.com/politics",
		Selectors: domain.SelectorConfig{
			Articles: ".news-item",
			Title:    ".news-title a",
			Link:     ".news-title a",
			Date:     ".news-time",
			Content:  ".news-details",
		},
		Enabled: true,
	},
	{
		Name: "Dainik Bangla",
		URL:  "https://www.dainikbangla.com/politics",
		Selectors: domain.SelectorConfig{
			Articles: ".news-content, .post-item",
			Title:    "h2 a, h3 a, .title a",
			Link:     "h2 a, h3 a, .title a",
			Date:     ".date, .time",
			Content:  ".post-content, .news-details",
		},
		Enabled: true,
	},
	{
		Name: "Dhaka Tribune",
		URL:  "https://www.dhakatribune.com/politics",
		Selectors: domain.SelectorConfig{
			Articles: ".story-card, .news-item",
			Title:    ".story-title a, h2 a",
			Link:     ".story-title a, h2 a",
			Date:     ".story-time, .date-time",
			Content:  ".story-content",
		},
		Enabled: true,
	},
	{
		Name: "Daily Manab Zamin",
		URL:  "https://mzamin.com/category.php?cat=2",
		Selectors: domain.SelectorConfig{
			Articles: ".news-item, .story-wrapper",
			Title:    ".news-title a, h2 a",
			Link:     ".news-title a, h2 a",
			Date:     ".news-date, .time",
			Content:  ".news-content",
		},
		Enabled: true,
	},
	{
		Name: "Protidiner Sangbad",
		URL:  "https://www.protidinersangbad.com/politics",
		Selectors: domain.SelectorConfig{
			Articles: ".news-box, .article-item",
			Title:    ".news-title a, h3 a",
			Link:     ".news-title a, h3 a",
			Date:     ".news-time, .date",
			Content:  ".news-details",
		},
		Enabled: true,
	},
	{
		Name: "Jugantor",
		URL:  "https://www.jugantor.com/politics",
		Selectors: domain.SelectorConfig{
			Articles: ".news-item, .story-card",
			Title:    ".title a, h2 a",
			Link:     ".title a, h2 a",
			Date:     ".date-time, .time",
			Content:  ".story-content, .details",
		},
		Enabled: true,
	},
	{
		Name: "Daily Naya Diganta",
		URL:  "https://www.dailynayadiganta.com/politics",
		Selectors: domain.SelectorConfig{
			Articles: ".news-wrapper, .article-box",
			Title:    ".news-title a, h2 a",
			Link:     ".news-title a, h2 a",
			Date:     ".publish-time, .date",
			Content:  ".news-content",
		},
		Enabled: true,
	},
	{
		Name: "Ittefaq",
		URL:  "https://www.ittefaq.com.bd/politics",
		Selectors: domain.SelectorConfig{
			Articles: ".news-item, .story-wrapper",
			Title:    ".news-headline a, h2 a",
			Link:     ".news-headline a, h2 a",
			Date:     ".news-time, .date-time",
			Content:  ".news-details, .story-content",
		},
		Enabled: true,
	},
	{
		Name: "Bangladesh Pratidin",
		URL:  "https://www.bd-pratidin.com/politics",
		Selectors: domain.SelectorConfig{
			Articles: ".news-content, .article-wrapper",
			Title:    ".news-title a, h2 a",
			Link:     ".news-title a, h2 a",
			Date:     ".news-date, .time-stamp",
			Content:  ".news-body, .article-content",
		},
		Enabled: true,
	},
}
