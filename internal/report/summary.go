package report

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/GoSim-25-26J-441/reliability-sim/pkg/models"
)

// SummaryStruct converts a summary into a protobuf Struct. Statistics that
// could not be computed are omitted.
func SummaryStruct(s *models.Summary) (*structpb.Struct, error) {
	fields := map[string]any{
		"run_id":       s.RunID,
		"orchestrator": s.Orchestrator,
		"trials":       s.Trials,
	}
	stats := map[string]*models.Statistic{
		"container_failure_times": s.ContainerFailures,
		"running_cost":            s.RunningCost,
		"actual_cost_of_failure":  s.ActualCostOfFailure,
		"total_cost":              s.TotalCost,
	}
	for name, st := range stats {
		if st == nil {
			continue
		}
		fields[name] = map[string]any{
			"count":    st.Count,
			"mean":     st.Mean,
			"median":   st.Median,
			"variance": st.Variance,
		}
	}

	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to convert summary: %w", err)
	}
	return out, nil
}

// MarshalSummary renders a summary as indented JSON
func MarshalSummary(s *models.Summary) ([]byte, error) {
	st, err := SummaryStruct(s)
	if err != nil {
		return nil, err
	}
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal summary: %w", err)
	}
	return data, nil
}
