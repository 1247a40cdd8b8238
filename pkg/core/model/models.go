package model

type Role string

const (
	RoleRegular Role = "regular"
	RoleSpecial Role = "special"
)

func (r Role) IsValid() bool {
	return r == RoleRegular || r == RoleSpecial
}

// Doctor represents a member of the department roster. Roster order is
// significant: it is the tie-break order used wherever doctors are scanned
// deterministically.
type Doctor struct {
	Name string
	Role Role
}

// SessionQuotas holds the monthly session requirements for a regular doctor,
// broken down by procedure type and team position.
type SessionQuotas struct {
	CoronaryPrimary   int
	CoronarySecondary int
	TAVIPrimary       int
	TAVISecondary     int
}

// QuotaOverride adjusts the default quotas for a single doctor. Nil fields
// leave the default in place.
type QuotaOverride struct {
	CoronaryPrimary   *int
	CoronarySecondary *int
	TAVIPrimary       *int
	TAVISecondary     *int
	Standby           *int
	// SingleWeekendStandby marks a doctor who covers one Saturday alone
	// instead of entering the Friday+Saturday pairing.
	SingleWeekendStandby bool
}

// DutyPolicy collects the scheduling rules for a month: default quotas,
// per-doctor overrides, standby exclusions, and the clinic pairing.
type DutyPolicy struct {
	Sessions     SessionQuotas
	StandbyQuota int
	Overrides    map[string]QuotaOverride

	// StandbyExcluded lists doctors who only work sessions and never take
	// standby duty.
	StandbyExcluded []string

	// ClinicDoctors are the two doctors who rotate through the month's
	// clinic days.
	ClinicDoctors [2]string

	// AllowBestEffortPairs lets a session pair repeat a doctor when the
	// distinct-draw budget cannot separate the two positions, instead of
	// leaving the day unassigned.
	AllowBestEffortPairs bool

	// StrictFallbackAvailability makes the standby fallback respect
	// unavailability instead of drawing from the whole special pool.
	StrictFallbackAvailability bool
}

// DefaultPolicy returns the long-standing departmental defaults: two
// coronary sessions per position, one TAVI session per position, and five
// standby days per regular doctor.
func DefaultPolicy() DutyPolicy {
	return DutyPolicy{
		Sessions: SessionQuotas{
			CoronaryPrimary:   2,
			CoronarySecondary: 2,
			TAVIPrimary:       1,
			TAVISecondary:     1,
		},
		StandbyQuota: 5,
	}
}

// SessionQuotasFor resolves the session quotas for the named doctor,
// applying any override on top of the defaults.
func (p DutyPolicy) SessionQuotasFor(name string) SessionQuotas {
	quotas := p.Sessions
	override, ok := p.Overrides[name]
	if !ok {
		return quotas
	}
	if override.CoronaryPrimary != nil {
		quotas.CoronaryPrimary = *override.CoronaryPrimary
	}
	if override.CoronarySecondary != nil {
		quotas.CoronarySecondary = *override.CoronarySecondary
	}
	if override.TAVIPrimary != nil {
		quotas.TAVIPrimary = *override.TAVIPrimary
	}
	if override.TAVISecondary != nil {
		quotas.TAVISecondary = *override.TAVISecondary
	}
	return quotas
}

// StandbyQuotaFor resolves the standby quota for the named doctor.
func (p DutyPolicy) StandbyQuotaFor(name string) int {
	if override, ok := p.Overrides[name]; ok && override.Standby != nil {
		return *override.Standby
	}
	return p.StandbyQuota
}

// IsSingleWeekendStandby reports whether the named doctor takes a single
// Saturday instead of a full weekend block.
func (p DutyPolicy) IsSingleWeekendStandby(name string) bool {
	override, ok := p.Overrides[name]
	return ok && override.SingleWeekendStandby
}

// IsStandbyExcluded reports whether the named doctor never takes standby.
func (p DutyPolicy) IsStandbyExcluded(name string) bool {
	for _, excluded := range p.StandbyExcluded {
		if excluded == name {
			return true
		}
	}
	return false
}
