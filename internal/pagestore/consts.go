package pagestore

// PageSize is the size in bytes of one page, per spec.md §3.1.
const PageSize = 4096

// InvalidPageID marks the absence of a page.
const InvalidPageID int32 = -1

// infoSlots is the number of int32 slots in the info page (PageSize / 4).
const infoSlots = PageSize / 4

// FreeListHeadSlot is the info-page slot reserved for the free-frame list head.
const FreeListHeadSlot = 0
