package contacts

const (
	minStageDuration     = 1
	maxStageDuration     = 30
	defaultRetryInterval = 1
)

// Target is one recipient of an engagement stage. It is either a
// ChannelTarget or a ContactTarget.
type Target interface {
	describe() TargetInput
}

// ChannelTarget pages a single contact channel.
type ChannelTarget struct {
	ContactChannelID       string
	RetryIntervalInMinutes int
}

func (t ChannelTarget) describe() TargetInput {
	retry := t.RetryIntervalInMinutes
	return TargetInput{ChannelTargetInfo: &ChannelTargetInfo{
		ContactChannelID:       t.ContactChannelID,
		RetryIntervalInMinutes: &retry,
	}}
}

// ContactTarget engages another contact, typically from an escalation plan.
type ContactTarget struct {
	ContactID   string
	IsEssential bool
}

func (t ContactTarget) describe() TargetInput {
	essential := t.IsEssential
	return TargetInput{ContactTargetInfo: &ContactTargetInfo{
		ContactID:   t.ContactID,
		IsEssential: &essential,
	}}
}

// Stage waits DurationInMinutes for the targets to acknowledge before the
// next stage starts.
type Stage struct {
	DurationInMinutes int
	Targets           []Target
}

// NewTarget builds a target from its wire shape. Exactly one of the two
// shapes must be set.
func NewTarget(in TargetInput) (Target, error) {
	switch {
	case in.ChannelTargetInfo != nil && in.ContactTargetInfo != nil:
		return nil, validationError("Invalid value provided - a target must specify exactly one of ChannelTargetInfo or ContactTargetInfo, not both")
	case in.ChannelTargetInfo != nil:
		info := in.ChannelTargetInfo
		if info.ContactChannelID == "" {
			return nil, validationError("Invalid value provided - ChannelTargetInfo.ContactChannelId is required")
		}
		retry := defaultRetryInterval
		if info.RetryIntervalInMinutes != nil {
			retry = *info.RetryIntervalInMinutes
		}
		return ChannelTarget{ContactChannelID: info.ContactChannelID, RetryIntervalInMinutes: retry}, nil
	case in.ContactTargetInfo != nil:
		info := in.ContactTargetInfo
		if info.ContactID == "" {
			return nil, validationError("Invalid value provided - ContactTargetInfo.ContactId is required")
		}
		essential := false
		if info.IsEssential != nil {
			essential = *info.IsEssential
		}
		return ContactTarget{ContactID: info.ContactID, IsEssential: essential}, nil
	default:
		return nil, validationError("Invalid value provided - a target must specify one of ChannelTargetInfo or ContactTargetInfo")
	}
}

// NewStage validates the duration and builds every target in order.
func NewStage(in StageInput) (Stage, error) {
	if in.DurationInMinutes < minStageDuration || in.DurationInMinutes > maxStageDuration {
		return Stage{}, validationError("Invalid value provided - DurationInMinutes %d must be between %d and %d", in.DurationInMinutes, minStageDuration, maxStageDuration)
	}
	targets := make([]Target, 0, len(in.Targets))
	for _, raw := range in.Targets {
		target, err := NewTarget(raw)
		if err != nil {
			return Stage{}, err
		}
		targets = append(targets, target)
	}
	return Stage{DurationInMinutes: in.DurationInMinutes, Targets: targets}, nil
}

// BuildPlan turns requested stages into an engagement plan, keeping their
// order. An empty plan is valid.
func BuildPlan(in PlanInput) ([]Stage, error) {
	stages := make([]Stage, 0, len(in.Stages))
	for _, raw := range in.Stages {
		stage, err := NewStage(raw)
		if err != nil {
			return nil, err
		}
		stages = append(stages, stage)
	}
	return stages, nil
}

func describePlan(stages []Stage) PlanDescription {
	out := PlanDescription{Stages: make([]StageDescription, 0, len(stages))}
	for _, stage := range stages {
		targets := make([]TargetInput, 0, len(stage.Targets))
		for _, t := range stage.Targets {
			targets = append(targets, t.describe())
		}
		out.Stages = append(out.Stages, StageDescription{
			DurationInMinutes: stage.DurationInMinutes,
			Targets:           targets,
		})
	}
	return out
}
