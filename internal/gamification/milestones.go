package gamification

// streakMilestones are the streak lengths that trigger a celebration
var streakMilestones = []int{3, 7, 14, 30, 50, 100, 365}

// Milestones returns the milestone values in ascending order
func Milestones() []int {
	out := make([]int, len(streakMilestones))
	copy(out, streakMilestones)
	return out
}

// IsStreakMilestone reports whether n is exactly one of the milestones
func IsStreakMilestone(n int) bool {
	for _, m := range streakMilestones {
		if m == n {
			return true
		}
	}
	return false
}

// NextMilestone returns the smallest milestone strictly greater than n.
// ok is false once n has passed the last milestone.
func NextMilestone(n int) (milestone int, ok bool) {
	for _, m := range streakMilestones {
		if m > n {
			return m, true
		}
	}
	return 0, false
}
