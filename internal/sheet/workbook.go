package sheet

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

func readWorkbook(path, sheet string) (*grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open workbook %s", path)
	}
	defer f.Close()

	name, err := resolveSheet(f, sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read sheet %q of %s", name, path)
	}
	return &grid{sheet: name, rows: rows}, nil
}

// resolveSheet returns sheet if the workbook has it, or the first sheet
// when sheet is empty.
func resolveSheet(f *excelize.File, sheet string) (string, error) {
	list := f.GetSheetList()
	if sheet == "" {
		if len(list) == 0 {
			return "", errors.Wrap(ErrSheetNotFound, "workbook has no sheets")
		}
		return list[0], nil
	}
	for _, name := range list {
		if name == sheet {
			return name, nil
		}
	}
	return "", errors.Wrapf(ErrSheetNotFound, "%q (available: %v)", sheet, list)
}
