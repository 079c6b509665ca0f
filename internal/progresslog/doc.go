// Copyright (c) 2020-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package progresslog provides periodic logging for long running signing and
verification loops.

Tests are included to ensure proper functionality.

## Feature Overview

- Maintains cumulative totals between each logging interval
  - Total number of signatures
  - Total number of verifications
  - Total number of signatures that used freshly computed nonces
- Logs all cumulative data every 10 seconds
- Immediately logs any outstanding data when forced
*/
package progresslog
