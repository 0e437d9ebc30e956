package entity

import "strconv"

// Institute is a top-level organisation. PIC is the person in charge.
type Institute struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	PIC     string `json:"pic"`
	Address string `json:"address"`
}

func (i Institute) Field(name string) (string, bool) {
	switch name {
	case "id":
		return strconv.Itoa(i.ID), true
	case "name":
		return i.Name, true
	case "pic":
		return i.PIC, true
	case "address":
		return i.Address, true
	}
	return "", false
}

type Unit struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	PIC         string `json:"pic"`
	InstituteID int    `json:"institute_id"`
}

func (u Unit) Field(name string) (string, bool) {
	switch name {
	case "id":
		return strconv.Itoa(u.ID), true
	case "name":
		return u.Name, true
	case "pic":
		return u.PIC, true
	case "institute_id":
		return strconv.Itoa(u.InstituteID), true
	}
	return "", false
}

type SubUnit struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	PIC    string `json:"pic"`
	UnitID int    `json:"unit_id"`
}

func (s SubUnit) Field(name string) (string, bool) {
	switch name {
	case "id":
		return strconv.Itoa(s.ID), true
	case "name":
		return s.Name, true
	case "pic":
		return s.PIC, true
	case "unit_id":
		return strconv.Itoa(s.UnitID), true
	}
	return "", false
}

type Location struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	PIC      string `json:"pic"`
	Building string `json:"building"`
}

func (l Location) Field(name string) (string, bool) {
	switch name {
	case "id":
		return strconv.Itoa(l.ID), true
	case "name":
		return l.Name, true
	case "pic":
		return l.PIC, true
	case "building":
		return l.Building, true
	}
	return "", false
}
