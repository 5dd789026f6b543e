package storage

import (
	"encoding/json"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// jsonFloat encodes NaN and ±Inf as null, which decodes back to NaN. A
// degenerate run ends with non-finite drifts and positions that
// encoding/json refuses to write.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func (f *jsonFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = jsonFloat(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = jsonFloat(v)
	return nil
}

type jsonVec struct {
	X jsonFloat `json:"X"`
	Y jsonFloat `json:"Y"`
}

func toJSONVec(v r2.Vec) jsonVec { return jsonVec{X: jsonFloat(v.X), Y: jsonFloat(v.Y)} }
func (v jsonVec) vec() r2.Vec    { return r2.Vec{X: float64(v.X), Y: float64(v.Y)} }

func toJSONMap(m map[string]float64) map[string]jsonFloat {
	if m == nil {
		return nil
	}
	out := make(map[string]jsonFloat, len(m))
	for k, v := range m {
		out[k] = jsonFloat(v)
	}
	return out
}

func fromJSONMap(m map[string]jsonFloat) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = float64(v)
	}
	return out
}

// runMetadataAlias drops the methods so the wrappers below do not recurse;
// their float fields shadow the embedded ones of the same name.
type runMetadataAlias RunMetadata

func (m RunMetadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		runMetadataAlias
		Dt                   jsonFloat            `json:"dt"`
		Duration             jsonFloat            `json:"duration"`
		EnergyDrift          jsonFloat            `json:"energy_drift"`
		AngularMomentumDrift jsonFloat            `json:"angular_momentum_drift"`
		Metrics              map[string]jsonFloat `json:"metrics"`
	}{
		runMetadataAlias:     runMetadataAlias(m),
		Dt:                   jsonFloat(m.Dt),
		Duration:             jsonFloat(m.Duration),
		EnergyDrift:          jsonFloat(m.EnergyDrift),
		AngularMomentumDrift: jsonFloat(m.AngularMomentumDrift),
		Metrics:              toJSONMap(m.Metrics),
	})
}

func (m *RunMetadata) UnmarshalJSON(data []byte) error {
	aux := struct {
		*runMetadataAlias
		Dt                   jsonFloat            `json:"dt"`
		Duration             jsonFloat            `json:"duration"`
		EnergyDrift          jsonFloat            `json:"energy_drift"`
		AngularMomentumDrift jsonFloat            `json:"angular_momentum_drift"`
		Metrics              map[string]jsonFloat `json:"metrics"`
	}{runMetadataAlias: (*runMetadataAlias)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.Dt = float64(aux.Dt)
	m.Duration = float64(aux.Duration)
	m.EnergyDrift = float64(aux.EnergyDrift)
	m.AngularMomentumDrift = float64(aux.AngularMomentumDrift)
	m.Metrics = fromJSONMap(aux.Metrics)
	return nil
}

type pointJSON struct {
	Time                jsonFloat `json:"t"`
	Pos                 jsonVec   `json:"pos"`
	Vel                 jsonVec   `json:"vel"`
	DistanceToReference jsonFloat `json:"distance_to_reference"`
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(pointJSON{
		Time:                jsonFloat(p.Time),
		Pos:                 toJSONVec(p.Pos),
		Vel:                 toJSONVec(p.Vel),
		DistanceToReference: jsonFloat(p.DistanceToReference),
	})
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var aux pointJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Point{
		Time:                float64(aux.Time),
		Pos:                 aux.Pos.vec(),
		Vel:                 aux.Vel.vec(),
		DistanceToReference: float64(aux.DistanceToReference),
	}
	return nil
}
