package skills

// Missing returns the job description skills absent from the resume, in jdSkills order.
func Missing(resumeSkills, jdSkills []string) []string {
	have := toSet(resumeSkills)
	out := make([]string, 0)
	for _, skill := range dedupe(jdSkills) {
		if _, ok := have[skill]; !ok {
			out = append(out, skill)
		}
	}
	return out
}

// Matched returns the skills present in both sets, in jdSkills order.
func Matched(resumeSkills, jdSkills []string) []string {
	have := toSet(resumeSkills)
	out := make([]string, 0)
	for _, skill := range dedupe(jdSkills) {
		if _, ok := have[skill]; ok {
			out = append(out, skill)
		}
	}
	return out
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
