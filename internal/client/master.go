package client

import (
	"context"
	"fmt"

	"simaset/internal/entity"
)

func (c *Client) Roles(ctx context.Context) ([]entity.Role, error) {
	var body struct {
		Roles []entity.Role `json:"roles"`
	}
	if err := c.get(ctx, "roles", "/role", &body); err != nil {
		return nil, err
	}
	return body.Roles, nil
}

func (c *Client) Institutes(ctx context.Context) ([]entity.Institute, error) {
	var body struct {
		Institutes []entity.Institute `json:"institutes"`
	}
	if err := c.get(ctx, "institutes", "/institute", &body); err != nil {
		return nil, err
	}
	return body.Institutes, nil
}

func (c *Client) Units(ctx context.Context) ([]entity.Unit, error) {
	var body struct {
		Units []entity.Unit `json:"units"`
	}
	if err := c.get(ctx, "units", "/unit", &body); err != nil {
		return nil, err
	}
	return body.Units, nil
}

func (c *Client) SubUnits(ctx context.Context) ([]entity.SubUnit, error) {
	var body struct {
		SubUnits []entity.SubUnit `json:"subunits"`
	}
	if err := c.get(ctx, "subunits", "/subunit", &body); err != nil {
		return nil, err
	}
	return body.SubUnits, nil
}

func (c *Client) Locations(ctx context.Context) ([]entity.Location, error) {
	var body struct {
		Locations []entity.Location `json:"locations"`
	}
	if err := c.get(ctx, "locations", "/location", &body); err != nil {
		return nil, err
	}
	return body.Locations, nil
}

// DetailKind names the master collection a registration role is linked to.
type DetailKind string

const (
	DetailNone      DetailKind = ""
	DetailInstitute DetailKind = "institute"
	DetailUnit      DetailKind = "unit"
	DetailSubUnit   DetailKind = "subunit"
	DetailLocation  DetailKind = "location"
)

// DetailOption is one choice in the registration detail select.
type DetailOption struct {
	ID   int
	Name string
}

// DetailOptions lists the records of the given kind as select options.
func (c *Client) DetailOptions(ctx context.Context, kind DetailKind) ([]DetailOption, error) {
	switch kind {
	case DetailInstitute:
		list, err := c.Institutes(ctx)
		return toOptions(list, func(v entity.Institute) DetailOption { return DetailOption{v.ID, v.Name} }), err
	case DetailUnit:
		list, err := c.Units(ctx)
		return toOptions(list, func(v entity.Unit) DetailOption { return DetailOption{v.ID, v.Name} }), err
	case DetailSubUnit:
		list, err := c.SubUnits(ctx)
		return toOptions(list, func(v entity.SubUnit) DetailOption { return DetailOption{v.ID, v.Name} }), err
	case DetailLocation:
		list, err := c.Locations(ctx)
		return toOptions(list, func(v entity.Location) DetailOption { return DetailOption{v.ID, v.Name} }), err
	case DetailNone:
		return nil, nil
	}
	return nil, fmt.Errorf("detail options: unknown kind %q", kind)
}

func toOptions[T any](list []T, conv func(T) DetailOption) []DetailOption {
	out := make([]DetailOption, 0, len(list))
	for _, v := range list {
		out = append(out, conv(v))
	}
	return out
}
