package course

// catalog holds the five course units in order. Only the introduction
// is free; everything else sits behind the premium paywall.
var catalog = []Unit{
	{
		Ordinal:     1,
		Title:       "What Is Tai Chi?",
		Description: "Discover the ancient art of Tai Chi, its origins, and how it can transform your daily life through gentle movement and mindful breathing.",
		VideoURL:    "https://www.youtube.com/embed/dQw4w9WgXcQ",
		KeyMovements: []string{
			"Centering and grounding stance",
			"Natural breathing rhythm",
			"Awareness of body alignment",
		},
		JournalPrompt: "What drew you to learn about Tai Chi? What are you hoping to discover or achieve through this practice?",
		Free:          true,
		EstimatedTime: "15 minutes",
	},
	{
		Ordinal:     2,
		Title:       "Yin-Yang & Daoist Roots",
		Description: "Explore the philosophical foundation of Tai Chi, understanding the balance of opposites and the Daoist principles that guide this ancient practice.",
		VideoURL:    "https://www.youtube.com/embed/dQw4w9WgXcQ",
		KeyMovements: []string{
			"Understanding energy flow",
			"Balancing effort and relaxation",
			"Connecting with natural rhythms",
		},
		JournalPrompt: "How do you currently experience balance in your life? Where do you feel harmony, and where do you feel discord?",
		EstimatedTime: "20 minutes",
	},
	{
		Ordinal:     3,
		Title:       "Movement + Breath Connection",
		Description: "Learn to synchronize your breath with gentle movements, creating a flowing meditation that calms the mind and strengthens the body.",
		VideoURL:    "https://www.youtube.com/embed/dQw4w9WgXcQ",
		KeyMovements: []string{
			"Coordinated breathing patterns",
			"Fluid transition between poses",
			"Mindful movement awareness",
		},
		JournalPrompt: "How did it feel to connect your breath with movement? What did you notice about your body's response?",
		EstimatedTime: "25 minutes",
	},
	{
		Ordinal:     4,
		Title:       "Everyday Mindfulness Practices",
		Description: "Integrate Tai Chi principles into your daily routine, bringing mindfulness and presence to ordinary activities.",
		VideoURL:    "https://www.youtube.com/embed/dQw4w9WgXcQ",
		KeyMovements: []string{
			"Walking meditation techniques",
			"Mindful daily activities",
			"Stress release exercises",
		},
		JournalPrompt: "Which daily activities could benefit from more mindfulness? How might you apply Tai Chi principles to these moments?",
		EstimatedTime: "18 minutes",
	},
	{
		Ordinal:     5,
		Title:       "Integrating Tai Chi Into Daily Life",
		Description: "Create a sustainable practice that fits your lifestyle, building lasting habits that support your wellbeing and inner peace.",
		VideoURL:    "https://www.youtube.com/embed/dQw4w9WgXcQ",
		KeyMovements: []string{
			"Creating personal practice routines",
			"Adapting movements for any space",
			"Building consistency and motivation",
		},
		JournalPrompt: "What does your ideal Tai Chi practice look like? How will you maintain this practice in your daily life?",
		EstimatedTime: "22 minutes",
	},
}

// Catalog returns all units in course order.
// The returned slice is a copy; callers may not mutate the catalog.
func Catalog() []Unit {
	units := make([]Unit, len(catalog))
	copy(units, catalog)
	return units
}

// Count returns the number of units in the course.
func Count() int {
	return len(catalog)
}

// Get looks a unit up by its ordinal.
func Get(ordinal int) (Unit, error) {
	for _, unit := range catalog {
		if unit.Ordinal == ordinal {
			return unit, nil
		}
	}
	return Unit{}, ErrNotFound
}
