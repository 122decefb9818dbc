package annotation

// Stage is the state of one record after a named pipeline stage.
type Stage struct {
	Name          string `json:"stage" yaml:"stage"`
	Annotation    Value  `json:"annotation" yaml:"annotation"`
	Subannotation Value  `json:"subannotation" yaml:"subannotation"`
}

// Explain runs the pipeline for tissue on a single record and returns
// every stage that changed it: the normalizer, each tissue step that
// matched, and the finalizer. The first stage is always the input.
func Explain(r Record, tissue string) []Stage {
	set, _ := Lookup(tissue)
	strip := set.StripNumbers()
	rs := &RecordSet{
		Columns: []string{AnnotationColumn, SubannotationColumn},
		Records: []Record{r},
	}

	stages := []Stage{stageOf("input", rs)}
	record := func(name string) {
		if last := stages[len(stages)-1]; last.Annotation.Equal(rs.Records[0].Annotation) &&
			last.Subannotation.Equal(rs.Records[0].Subannotation) {
			return
		}
		stages = append(stages, stageOf(name, rs))
	}

	NormalizeRecords(rs, strip)
	record("normalize")
	for _, s := range set.Steps {
		if s.Apply(rs) > 0 {
			record(s.String())
		}
	}
	Finalize(rs, strip)
	record("finalize")
	return stages
}

func stageOf(name string, rs *RecordSet) Stage {
	r := rs.Records[0]
	return Stage{Name: name, Annotation: r.Annotation, Subannotation: r.Subannotation}
}
