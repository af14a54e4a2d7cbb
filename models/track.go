package models

// Track distinguishes the two test families sharing the attempt engine.
type Track string

const (
	TrackPreSelection    Track = "pre_selection"
	TrackSkillAssessment Track = "skill_assessment"
)
