package main

import (
	"fmt"
	"io"
	"math"

	"github.com/akualab/dhmm"
	"github.com/akualab/dhmm/model"
	"github.com/golang/glog"
)

// forwarder computes forward probabilities.
type forwarder interface {
	Forward(outputs []string) (final string, prob float64, err error)
	model.Scorer
}

// generator returns random observations.
type generator interface {
	Next(n int) (*model.Observation, error)
}

// runner prints the outcome of an operation to w and, when results is set,
// writes a JSON record.
type runner struct {
	w       io.Writer
	results *dhmm.ResultWriter
}

func (r *runner) forward(m forwarder, obs *model.Observation) error {

	final, prob, err := m.Forward(obs.Outputs)
	if err != nil {
		return fmt.Errorf("forward %s: %w", obs.ID, err)
	}
	logProb, err := m.LogProb(obs.Outputs)
	if err != nil {
		return fmt.Errorf("forward %s: %w", obs.ID, err)
	}
	glog.V(1).Infof("forward %s: log prob %f", obs.ID, logProb)

	fmt.Fprintf(r.w, "The final state is %s and has probability %g\n", final, prob)
	return r.write(&dhmm.Result{
		ID:         obs.ID,
		Op:         "forward",
		Outputs:    obs.Outputs,
		FinalState: final,
		Prob:       prob,
		LogProb:    finite(logProb),
	})
}

func (r *runner) viterbi(m model.Decoder, obs *model.Observation) error {

	path, prob, err := m.Viterbi(obs.Outputs)
	if err != nil {
		return fmt.Errorf("viterbi %s: %w", obs.ID, err)
	}

	fmt.Fprintf(r.w, "The viterbi best sequence of states is %v with probability %g\n", path, prob)
	return r.write(&dhmm.Result{
		ID:      obs.ID,
		Op:      "viterbi",
		States:  path,
		Outputs: obs.Outputs,
		Prob:    prob,
	})
}

func (r *runner) generate(gen generator, n int) error {

	obs, err := gen.Next(n)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	fmt.Fprintf(r.w, "STATES:    %v\nEMISSIONS: %v\n", obs.States, obs.Outputs)
	return r.write(&dhmm.Result{
		ID:      obs.ID,
		Op:      "generate",
		States:  obs.States,
		Outputs: obs.Outputs,
	})
}

func (r *runner) write(res *dhmm.Result) error {
	if r.results == nil {
		return nil
	}
	return r.results.Write(res)
}

// finite returns nil for -Inf which has no JSON encoding.
func finite(v float64) *float64 {
	if v < -math.MaxFloat64 {
		return nil
	}
	return &v
}
