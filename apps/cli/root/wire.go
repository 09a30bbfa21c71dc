package root

import (
	"github.com/Ashhiii/BFPSYSTEM-sub000/apps/cli/cmd/archive"
	"github.com/Ashhiii/BFPSYSTEM-sub000/apps/cli/cmd/workbook"
)

func init() {
	Root().AddCommand(workbook.Command())
	Root().AddCommand(archive.Command())
}
