package engagement

import "strings"

// ClassifyKeywords maps a free-text interaction type onto a category by
// ordered substring matching. The first matching rule wins, so the rule order
// is a behavioral contract: keyword sets overlap, and reordering the checks
// silently changes how multi-keyword strings like "prayer_chain_event"
// classify (prayer_request, because the prayer check runs before the event
// check). Matching is case-insensitive.
//
// Rule order:
//  1. "prayer"                  -> prayer_request
//  2. "rsvp" or "event"         -> event_registration
//  3. "bible_study" or "group"  -> small_group
//  4. "volunteer"               -> volunteering
//  5. "donation" or "giving"    -> donation
//  6. "attendance"              -> attendance
//  7. anything else             -> content_engagement
func ClassifyKeywords(rawType string) Category {
	s := strings.ToLower(rawType)
	switch {
	case strings.Contains(s, "prayer"):
		return CategoryPrayerRequest
	case strings.Contains(s, "rsvp"), strings.Contains(s, "event"):
		return CategoryEventRegistration
	case strings.Contains(s, "bible_study"), strings.Contains(s, "group"):
		return CategorySmallGroup
	case strings.Contains(s, "volunteer"):
		return CategoryVolunteering
	case strings.Contains(s, "donation"), strings.Contains(s, "giving"):
		return CategoryDonation
	case strings.Contains(s, "attendance"):
		return CategoryAttendance
	}
	return CategoryContentEngagement
}
