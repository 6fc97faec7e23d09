package services

// Challenge is one entry of the fixed colonization-challenge catalogue served
// to the frontend. The catalogue is read-only and lives in memory; the
// persisted Mission entity is a separate subsystem.
type Challenge struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Difficulty       string           `json:"difficulty"`
	Category         string           `json:"category"`
	NASADataRequired bool             `json:"nasaDataRequired"`
	DataSource       string           `json:"dataSource,omitempty"`
	Requirements     []string         `json:"requirements"`
	Rewards          ChallengeRewards `json:"rewards"`
}

type ChallengeRewards struct {
	Points int      `json:"points"`
	Badges []string `json:"badges"`
}

var challengeCatalogue = []Challenge{
	{
		ID:               "habitat-design-001",
		Title:            "Design a Mars Habitat",
		Description:      "Create a sustainable habitat design using real Mars environmental data from NASA's InSight mission.",
		Difficulty:       "intermediate",
		Category:         "habitat",
		NASADataRequired: true,
		DataSource:       "mars_weather",
		Requirements: []string{
			"Analyze Mars atmospheric pressure data",
			"Design for extreme temperature variations",
			"Include radiation protection",
			"Plan for dust storm resilience",
		},
		Rewards: ChallengeRewards{Points: 500, Badges: []string{"habitat-designer", "data-analyst"}},
	},
	{
		ID:               "solar-power-001",
		Title:            "Optimize Solar Power System",
		Description:      "Design an efficient solar power system for Mars using actual solar irradiance data.",
		Difficulty:       "advanced",
		Category:         "energy",
		NASADataRequired: true,
		DataSource:       "mars_weather",
		Requirements: []string{
			"Calculate optimal panel angles",
			"Account for dust accumulation",
			"Design energy storage systems",
			"Plan for seasonal variations",
		},
		Rewards: ChallengeRewards{Points: 750, Badges: []string{"energy-engineer", "solar-expert"}},
	},
	{
		ID:               "water-extraction-001",
		Title:            "Water Extraction from Regolith",
		Description:      "Develop a system to extract water from Martian soil using NASA's mineral composition data.",
		Difficulty:       "advanced",
		Category:         "water",
		NASADataRequired: true,
		DataSource:       "mars_photos",
		Requirements: []string{
			"Analyze soil composition from rover data",
			"Design extraction mechanisms",
			"Calculate water yield potential",
			"Plan purification systems",
		},
		Rewards: ChallengeRewards{Points: 800, Badges: []string{"water-engineer", "resource-manager"}},
	},
	{
		ID:               "greenhouse-001",
		Title:            "Mars Greenhouse Design",
		Description:      "Create a controlled environment agriculture system for Mars using atmospheric data.",
		Difficulty:       "intermediate",
		Category:         "food",
		NASADataRequired: true,
		DataSource:       "mars_weather",
		Requirements: []string{
			"Design atmospheric control systems",
			"Select appropriate crops",
			"Plan for low gravity effects",
			"Include waste recycling",
		},
		Rewards: ChallengeRewards{Points: 600, Badges: []string{"agricultural-engineer", "life-support-specialist"}},
	},
	{
		ID:               "rover-mission-001",
		Title:            "Plan a Rover Mission",
		Description:      "Design a scientific mission for a Mars rover using real terrain data from NASA images.",
		Difficulty:       "beginner",
		Category:         "transportation",
		NASADataRequired: true,
		DataSource:       "mars_photos",
		Requirements: []string{
			"Select landing site from available images",
			"Plan scientific objectives",
			"Design rover specifications",
			"Create mission timeline",
		},
		Rewards: ChallengeRewards{Points: 400, Badges: []string{"mission-planner", "rover-engineer"}},
	},
}

// AllChallenges returns a copy of the catalogue.
func AllChallenges() []Challenge {
	out := make([]Challenge, len(challengeCatalogue))
	copy(out, challengeCatalogue)
	return out
}

// ChallengeByID returns the catalogue entry with the given id, or nil.
func ChallengeByID(id string) *Challenge {
	for i := range challengeCatalogue {
		if challengeCatalogue[i].ID == id {
			c := challengeCatalogue[i]
			return &c
		}
	}
	return nil
}

// FilterChallenges narrows the catalogue by category and difficulty (empty
// values match everything) and caps the result at limit when limit > 0.
func FilterChallenges(category, difficulty string, limit int) []Challenge {
	var out []Challenge
	for _, c := range challengeCatalogue {
		if category != "" && c.Category != category {
			continue
		}
		if difficulty != "" && c.Difficulty != difficulty {
			continue
		}
		out = append(out, c)
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

// ChallengeCategories returns the distinct categories in catalogue order.
func ChallengeCategories() []string {
	return distinct(func(c Challenge) string { return c.Category })
}

// ChallengeDifficulties returns the distinct difficulties in catalogue order.
func ChallengeDifficulties() []string {
	return distinct(func(c Challenge) string { return c.Difficulty })
}

func distinct(key func(Challenge) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range challengeCatalogue {
		k := key(c)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

// MissionCategories is the fixed vocabulary for persisted missions.
func MissionCategories() []string {
	return []string{"habitat", "energy", "water", "food", "transportation"}
}

// MissionDifficulties is the fixed difficulty vocabulary.
func MissionDifficulties() []string {
	return []string{"beginner", "intermediate", "advanced"}
}
