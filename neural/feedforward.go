package neural

import "math"

// FeedForward evaluates the network against a sensor vector, updates
// driven neuron outputs in place, and returns the per-action activation
// levels in [-1,1]. sensors must have length net.NumSensors.
func (net *Network) FeedForward(sensors []float64) []float64 {
	accum := make([]float64, len(net.Neurons))
	out := make([]float64, net.NumActions)

	for _, c := range net.Connections {
		var src float64
		if c.SourceIsSensor {
			src = sensors[c.SourceID]
		} else {
			src = net.Neurons[c.SourceID].Output
		}
		contribution := src * c.Weight
		if c.SinkIsAction {
			out[c.SinkID] += contribution
		} else {
			accum[c.SinkID] += contribution
		}
	}

	for i := range net.Neurons {
		if net.Neurons[i].Driven {
			net.Neurons[i].Output = math.Tanh(accum[i])
		}
	}

	levels := make([]float64, net.NumActions)
	for a := range levels {
		levels[a] = math.Tanh(out[a])
	}
	return levels
}
