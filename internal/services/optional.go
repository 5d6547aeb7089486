package services

// OptionalID distinguishes an absent nullable reference from an explicit
// null in partial updates.
type OptionalID struct {
	Set   bool
	Value *uint
}

func (optional OptionalID) apply(target **uint) {
	if !optional.Set {
		return
	}
	if optional.Value == nil {
		*target = nil
		return
	}
	value := *optional.Value
	*target = &value
}
