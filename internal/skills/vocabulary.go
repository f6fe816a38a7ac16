// Package skills finds known skill phrases in normalized text and compares the skill sets of a
// resume and a job description.
package skills

// DefaultVocabulary lists the recognized software engineering and ML skills.
// Entries are lowercase and may contain several words.
var DefaultVocabulary = []string{
	"python", "java", "c++", "javascript", "react", "angular", "node.js", "flask", "django",
	"sql", "nosql", "postgresql", "mongodb", "mysql", "redis",
	"aws", "azure", "google cloud", "docker", "kubernetes", "git", "jenkins", "ci/cd",
	"data structures", "algorithms", "object-oriented programming", "system design",
	"restful apis", "microservices", "agile", "scrum", "devops",
	"machine learning", "deep learning", "pytorch", "tensorflow", "scikit-learn",
	"nlp", "computer vision", "data analysis", "big data", "spark", "hadoop",
	"cloud computing", "linux", "unix", "shell scripting", "bash", "testing",
	"troubleshooting", "problem-solving", "communication", "teamwork", "leadership",
	"api development", "web development", "mobile development", "backend development",
	"frontend development", "full stack development",
}
