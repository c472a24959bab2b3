package cluster

import "strings"

// Category is one bucket of the domain-keyword fallback.
type Category struct {
	ID   int
	Name string
}

// DefaultCategory receives every signature no keyword matches.
var DefaultCategory = Category{ID: 15, Name: "Default"}

type keywordCategory struct {
	keyword  string
	category Category
}

var (
	catGoogle    = Category{ID: 0, Name: "Google services"}
	catCode      = Category{ID: 1, Name: "Code hosting"}
	catShopping  = Category{ID: 2, Name: "Shopping"}
	catSocial    = Category{ID: 3, Name: "Social media"}
	catCareer    = Category{ID: 4, Name: "Professional"}
	catQA        = Category{ID: 5, Name: "Q&A"}
	catContent   = Category{ID: 6, Name: "Social content"}
	catStorage   = Category{ID: 7, Name: "Cloud storage"}
	catMedia     = Category{ID: 8, Name: "Entertainment"}
	catResearch  = Category{ID: 9, Name: "Education/Research"}
	catNews      = Category{ID: 10, Name: "News"}
	catUtilities = Category{ID: 11, Name: "Utilities"}
	catFinance   = Category{ID: 12, Name: "Finance"}
	catHealth    = Category{ID: 13, Name: "Health"}
	catTravel    = Category{ID: 14, Name: "Travel"}
)

// domainKeywords is matched top to bottom; the first keyword contained in the
// pseudo-domain wins.
var domainKeywords = []keywordCategory{
	{"google", catGoogle}, {"gmail", catGoogle}, {"youtube", catGoogle},
	{"github", catCode}, {"gitlab", catCode}, {"bitbucket", catCode},
	{"amazon", catShopping}, {"ebay", catShopping}, {"walmart", catShopping},
	{"facebook", catSocial}, {"instagram", catSocial}, {"twitter", catSocial},
	{"linkedin", catCareer}, {"indeed", catCareer}, {"glassdoor", catCareer},
	{"stackoverflow", catQA}, {"stackexchange", catQA}, {"quora", catQA},
	{"reddit", catContent}, {"pinterest", catContent}, {"tumblr", catContent},
	{"dropbox", catStorage}, {"onedrive", catStorage}, {"box", catStorage},
	{"netflix", catMedia}, {"spotify", catMedia}, {"hulu", catMedia},
	{"wikipedia", catResearch}, {"scholar", catResearch}, {"research", catResearch},
	{"news", catNews}, {"reuters", catNews}, {"bloomberg", catNews},
	{"weather", catUtilities}, {"maps", catUtilities}, {"calendar", catUtilities},
	{"bank", catFinance}, {"paypal", catFinance}, {"venmo", catFinance},
	{"health", catHealth}, {"medical", catHealth}, {"fitness", catHealth},
	{"travel", catTravel}, {"booking", catTravel}, {"airline", catTravel},
}

// CategoryFor returns the category of a pseudo-domain.
func CategoryFor(pseudoDomain string) Category {
	for _, kc := range domainKeywords {
		if strings.Contains(pseudoDomain, kc.keyword) {
			return kc.category
		}
	}
	return DefaultCategory
}

// Fallback labels each signature with the category ID of its first token.
// An empty signature is treated as the token "unknown".
func Fallback(signatures []string) []int {
	labels := make([]int, len(signatures))
	for i, sig := range signatures {
		token := "unknown"
		if fields := strings.Fields(sig); len(fields) > 0 {
			token = strings.ToLower(fields[0])
		}
		labels[i] = CategoryFor(token).ID
	}
	return labels
}
