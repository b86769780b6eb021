package lexicon

// Skills is the general skill and concept lexicon used for query expansion.
var Skills = New(
	Entry{Key: "ios", Synonyms: []string{"iphone", "ipad", "apple", "swift", "swiftui", "uikit", "apple frameworks", "objective-c", "apple ecosystem", "watchos", "apple platforms", "app store"}},
	Entry{Key: "android", Synonyms: []string{"kotlin", "java android", "google play"}},
	Entry{Key: "mobile", Synonyms: []string{"ios", "android", "react native", "flutter", "app", "smartphone", "mobile-first", "native mobile", "cross-platform"}},
	Entry{Key: "team", Synonyms: []string{"collaboration", "teamwork", "cross-functional", "agile", "cross-team", "distributed teams", "team player", "team-oriented", "cross-departmental", "mentoring", "leadership", "people management", "team management"}},
	Entry{Key: "leadership", Synonyms: []string{"management", "lead", "mentor", "senior", "architect", "cross-departmental", "technical leadership", "team coordination"}},
	Entry{Key: "backend", Synonyms: []string{"server", "api", "rest", "database", "node", "backend development", "integration"}},
	Entry{Key: "frontend", Synonyms: []string{"ui", "ux", "react", "web", "interface", "mobile-first", "pwa"}},
	Entry{Key: "milan", Synonyms: []string{"milano", "milan area", "lombardy", "monza", "bergamo", "como", "northern italy", "greater milan"}},
	Entry{Key: "rome", Synonyms: []string{"roma", "central italy"}},
	Entry{Key: "developer", Synonyms: []string{"engineer", "programmer", "development", "specialist", "expert"}},
	Entry{Key: "experience", Synonyms: []string{"skilled", "expert", "proficient", "extensive", "background", "track record"}},
)

// Places is the geographic lexicon. It overlaps with Skills on purpose.
var Places = New(
	Entry{Key: "milan", Synonyms: []string{"milano", "monza", "bergamo", "como", "lombardy", "northern italy", "greater milan area", "milan metropolitan"}},
	Entry{Key: "rome", Synonyms: []string{"roma", "central italy"}},
	Entry{Key: "turin", Synonyms: []string{"torino"}},
	Entry{Key: "florence", Synonyms: []string{"firenze", "central italy"}},
	Entry{Key: "bologna", Synonyms: []string{"emilia-romagna"}},
	Entry{Key: "verona", Synonyms: []string{"northern italy", "veneto"}},
)
