package service

import (
	"fmt"
	"strings"

	"github.com/buildwise/buildwise-backend/internal/planner/domain"
	"github.com/buildwise/buildwise-backend/internal/planner/llm"
)

const systemPrompt = `You are a construction planning assistant for residential and commercial building projects.
Reply with a single JSON object and nothing else. Use exactly these keys:
{
  "summary": "short overview of the project",
  "cost_breakdown": {"material": number, "labor": number, "other": number, "total": number},
  "materials": {"cement": number, "steel": number, "sand": number, "bricks": number},
  "timeline_weeks": number,
  "schedule_phases": [{"phase": "name", "start_week": number, "end_week": number, "description": "text"}],
  "risks": ["text"],
  "optimizations": ["text"],
  "workers_per_day": "string description of the daily crew"
}
Schedule phases run in order. Each phase starts the week after the previous one ends, with no gaps,
and the last phase ends on timeline_weeks. All money is in the currency given by the user.`

const fastTrackInstruction = "The client wants a Fast Track timeline: shorten the schedule by 20-30% compared to a standard build and plan for a larger crew per day."

// BuildMessages assembles the system and user messages for one request. The
// figures block carries the engine's numbers so the narrative agrees with them.
func BuildMessages(req domain.ProjectRequest, est domain.Estimate) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: userPrompt(req, est)},
	}
}

func userPrompt(req domain.ProjectRequest, est domain.Estimate) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Plan a %s building in %s.\n", req.Type, req.Country)
	fmt.Fprintf(&b, "Plot area: %g sqft, additional floors: %d.\n", float64(req.Area), int64(req.Floors))
	fmt.Fprintf(&b, "Budget tier: %s. Timeline: %s. Currency: %s.\n", req.Budget, req.Timeline, req.Currency)

	b.WriteString("\nComputed project figures:\n")
	if est.Materials != nil {
		fmt.Fprintf(&b, "- Total built-up area: %g sqft\n", est.Materials.TotalBuiltUpAreaSqft)
	}
	if est.Cost != nil {
		fmt.Fprintf(&b, "- Estimated total cost: %d %s\n", est.Cost.TotalEstimatedCost, est.Cost.Currency)
		fmt.Fprintf(&b, "- Material budget: %d, labor budget: %d, other: %d\n",
			est.Cost.SummaryBreakdown.Material, est.Cost.SummaryBreakdown.Labor, est.Cost.SummaryBreakdown.Other)
		fmt.Fprintf(&b, "- Crew: %d workers for %d days\n",
			est.Cost.LaborBreakdown.TotalWorkforce, est.Cost.LaborBreakdown.TotalDays)
	}
	if est.Materials != nil {
		fmt.Fprintf(&b, "- Cement: %d bags\n", est.Materials.CementBags)
		fmt.Fprintf(&b, "- Steel: %d kg\n", est.Materials.SteelKg)
		fmt.Fprintf(&b, "- Sand: %d tons\n", est.Materials.SandTons)
		fmt.Fprintf(&b, "- Bricks: %d\n", est.Materials.Bricks)
	}

	if req.FastTrack() {
		b.WriteString("\n")
		b.WriteString(fastTrackInstruction)
		b.WriteString("\n")
	}

	b.WriteString("\nUse these exact figures in cost_breakdown and materials.")
	return b.String()
}
