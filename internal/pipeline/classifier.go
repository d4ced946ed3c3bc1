package pipeline

// FactoryMade returns the bucket entries that also appear in the row's
// industrial-scale-items list, compared on trimmed phrase text, in bucket
// order. A blank industrial list means no entry qualifies.
func FactoryMade(bucketText, industrialText string) []string {
	industrial := SplitPhrases(industrialText)
	if len(industrial) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(industrial))
	for _, item := range industrial {
		set[item] = struct{}{}
	}
	var out []string
	for _, item := range SplitPhrases(bucketText) {
		if _, ok := set[item]; ok {
			out = append(out, item)
		}
	}
	return out
}
