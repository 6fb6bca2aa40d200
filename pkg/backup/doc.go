/*
Package backup copies the sources of a kachi profile into its destination.

🔄 Flow:
 1. Validate the destination (fatal for the profile when invalid)
 2. Expand "~/" and glob sources
 3. Classify each source as file, directory or not found
 4. Copy through a Copier and classify the result as a Kind

⚡ Failure policy:
  - missing source: recorded in Outcome.NotFound, counted as an error
  - permission denied: logged on its own, counted as an error
  - other copy failure: logged generically, counted as an error
  - source vanished during the copy: returned as ErrVanishedDuringCopy
*/
package backup
