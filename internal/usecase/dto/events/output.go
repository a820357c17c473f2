package events

type AdmissionOutput struct {
	EventID  string
	Admitted bool
	Reason   string
	Score    float64
}
