// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package testutils

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

func RandomModelName() string {
	return fmt.Sprintf("%s-%s-model", strings.ToLower(gofakeit.Word()), strings.ToLower(gofakeit.LetterN(6)))
}

func RandomToken() string {
	return "dapi" + strings.ToLower(gofakeit.LetterN(32))
}

func RandomWorkspaceURL() string {
	return fmt.Sprintf("https://%s.cloud.databricks.com", strings.ToLower(gofakeit.LetterN(10)))
}

func RandomID() string {
	return strings.ReplaceAll(gofakeit.UUID(), "-", "")
}

func RandomJobID() string {
	return fmt.Sprintf("%d", gofakeit.Number(100, 99999))
}
