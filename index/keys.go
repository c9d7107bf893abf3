package index

// The indexer owns the xref:* key namespace: a parallel structured
// projection of the store's raw KEL/TEL event streams, kept in step by
// re-verifying every event at write time rather than deriving lazily.
func xrefKelKey(aid string) string  { return "xref:kel:" + aid }
func xrefTelKey(ri string) string   { return "xref:tel:" + ri }
