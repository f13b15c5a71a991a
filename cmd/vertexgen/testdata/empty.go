package mesh

type Plain struct {
	ID uint64
}
