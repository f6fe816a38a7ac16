package textnorm

// stopwords is the common English stop list used by general purpose NLP pipelines.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "about", "above", "across", "after", "afterwards", "again", "against", "all", "almost",
		"alone", "along", "already", "also", "although", "always", "am", "among", "amongst", "amount",
		"an", "and", "another", "any", "anyhow", "anyone", "anything", "anyway", "anywhere", "are",
		"around", "as", "at", "be", "became", "because", "become", "becomes", "becoming", "been",
		"before", "beforehand", "behind", "being", "below", "beside", "besides", "between", "beyond",
		"both", "but", "by", "can", "cannot", "could", "did", "do", "does", "doing", "done", "down",
		"due", "during", "each", "eight", "either", "eleven", "else", "elsewhere", "empty", "enough",
		"even", "ever", "every", "everyone", "everything", "everywhere", "except", "few", "fifteen",
		"fifty", "first", "five", "for", "former", "formerly", "forty", "four", "from", "further",
		"had", "has", "have", "he", "hence", "her", "here", "hereafter", "hereby", "herein", "hereupon",
		"hers", "herself", "him", "himself", "his", "how", "however", "hundred", "i", "if", "in",
		"indeed", "into", "is", "it", "its", "itself", "just", "keep", "last", "latter", "latterly",
		"least", "less", "made", "many", "may", "me", "meanwhile", "might", "mine", "more", "moreover",
		"most", "mostly", "much", "must", "my", "myself", "namely", "neither", "never", "nevertheless",
		"next", "nine", "no", "nobody", "none", "noone", "nor", "not", "nothing", "now", "nowhere", "of",
		"off", "often", "on", "once", "one", "only", "onto", "or", "other", "others", "otherwise", "our",
		"ours", "ourselves", "out", "over", "own", "per", "perhaps", "please", "quite", "rather", "re",
		"really", "regarding", "same", "several", "she", "should", "since", "six", "sixty", "so", "some",
		"somehow", "someone", "something", "sometime", "sometimes", "somewhere", "still", "such", "ten",
		"than", "that", "the", "their", "them", "themselves", "then", "thence", "there", "thereafter",
		"thereby", "therefore", "therein", "thereupon", "these", "they", "third", "this", "those",
		"though", "three", "through", "throughout", "thru", "thus", "to", "together", "too", "toward",
		"towards", "twelve", "twenty", "two", "under", "unless", "until", "up", "upon", "us", "used",
		"using", "various", "very", "via", "was", "we", "well", "were", "what", "whatever", "when",
		"whence", "whenever", "where", "whereafter", "whereas", "whereby", "wherein", "whereupon",
		"wherever", "whether", "which", "while", "whither", "who", "whoever", "whole", "whom", "whose",
		"why", "will", "with", "within", "without", "would", "yet", "you", "your", "yours", "yourself",
		"yourselves",
	} {
		stopwords[w] = struct{}{}
	}
}

// IsStopword reports whether the lowercase token carries no content for matching.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}
