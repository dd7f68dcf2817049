package engine

// fixedRandom replays queued values; when a queue runs dry it repeats the last value.
type fixedRandom struct {
	ints   []int
	floats []float64
}

func (f *fixedRandom) Intn(n int) int {
	if len(f.ints) == 0 {
		return 0
	}
	v := f.ints[0]
	if len(f.ints) > 1 {
		f.ints = f.ints[1:]
	}
	if v >= n {
		v = n - 1
	}
	return v
}

func (f *fixedRandom) Float64() float64 {
	if len(f.floats) == 0 {
		return 0.99
	}
	v := f.floats[0]
	if len(f.floats) > 1 {
		f.floats = f.floats[1:]
	}
	return v
}

func testCatalog() *Catalog {
	return &Catalog{
		Name: "test",
		Challenges: map[string]Challenge{
			"A": {
				Title:         "Saisie de la demande",
				Question:      "Où consulter la demande ?",
				Options:       []string{"Teams", "Fichiers de suivi", "Mails"},
				CorrectAnswer: 1,
				Impact:        Penalty{Type: "Echanges inutiles", Value: "1h"},
			},
			"B": {
				Title:         "Planification",
				Question:      "Action suivante ?",
				Options:       []string{"Pesée", "Toxicologue"},
				CorrectAnswer: 0,
				Impact:        Penalty{Type: "Temps de traversée", Value: "2h"},
			},
			"Q": {Title: "Question ouverte", Question: "Sans options"},
		},
		Quests: map[string]Quest{
			"1": {
				Title: "Tri",
				Steps: []QuestStep{
					{Kind: StepInstruction, Content: "Lire"},
					{Kind: StepCard, Content: "Carte 1"},
					{Kind: StepCard, Content: "Carte 2"},
					{Kind: StepAnswer, Content: "Réponse", Impact: &Penalty{Type: "Echanges inutiles", Value: "2h"}},
				},
			},
			"2": {Title: "Vide"},
		},
		Roles: []Role{
			{ID: "moniteur", Name: "MONITEUR D'ÉTUDE"},
			{ID: "equipeTom", Name: "ÉQUIPE TOM"},
			{ID: "operateur", Name: "OPÉRATEUR"},
		},
		StageRoles: map[string][]string{
			"A": {"moniteur"},
			"C": {"operateur", "equipeTom"},
		},
		Scenarios: []Scenario{
			{ID: 1, Title: "TEST INTERNE"},
			{ID: 2, Title: "TEST EXTERNE"},
		},
	}
}

func newTestSession(opts ...SessionOption) *Session {
	base := []SessionOption{WithRandom(&fixedRandom{})}
	return NewSession(testCatalog(), append(base, opts...)...)
}
