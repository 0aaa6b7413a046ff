package domain

type Aircraft struct {
	Registration string
	Make         string
	Model        string
	Dimensions   string
	Weight       string
	FuelType     *string
	PilotID      *int64
}
