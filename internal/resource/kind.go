package resource

import "fmt"

type Kind int

const (
	Global Kind = iota
	Patient
	Log
)

func (k Kind) String() string {
	switch k {
	case Patient:
		return "pat"
	case Log:
		return "log"
	default:
		return "global"
	}
}

func kindString(s string) (Kind, error) {
	switch s {
	case "pat":
		return Patient, nil
	case "log":
		return Log, nil
	case "global":
		return Global, nil
	default:
		return 0, fmt.Errorf("unknown kind: %s", s)
	}
}
