package enums

type PaymentMethod string

const (
	MethodCOD PaymentMethod = "COD"
)

func (m PaymentMethod) Valid() bool {
	return m == MethodCOD
}
