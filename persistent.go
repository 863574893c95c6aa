package fount

// Persistent is implemented by anything that can be stored in a bucket.
// Both methods are provided by the amino codec wrappers that each
// extension declares for its models.
type Persistent interface {
	Marshal() ([]byte, error)
	Unmarshal(raw []byte) error
}
