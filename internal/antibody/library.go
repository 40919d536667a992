package antibody

// DefaultLibrary is the built-in candidate set, keyed by tumour-associated
// carbohydrate antigen. CDRs are IMGT-delimited.
var DefaultLibrary = Library{
	"Tn": {
		{Name: "Tn-218", Heavy: []string{"GFTFSRYT", "ISSSGGST", "ARTVRYGMDV"}, Light: []string{"QSVSSY", "DAS", "QQRSSWPFT"}},
		{Name: "Tn-5F4", Heavy: []string{"GYTFTSYW", "INPSNGRT", "ARGYYGSSYWYFDV"}, Light: []string{"SSVSY", "DTS", "QQWSSNPLT"}},
		{Name: "Tn-KT", Heavy: []string{"GFSLTSYG", "IWAGGST", "ARDYYGSRDAMDY"}, Light: []string{"QDISNY", "YTS", "QQGNTLPWT"}},
	},
	"sTn": {
		{Name: "sTn-B72.3", Heavy: []string{"GYTFTDHA", "ISPGNDDI", "KRSYYGH"}, Light: []string{"ESVDNYGISF", "AAS", "QQSKEVPWT"}},
		{Name: "sTn-CC49", Heavy: []string{"GYTFTDHA", "FSPGNDDF", "TRSLNMAY"}, Light: []string{"QSVLYSSNQKNY", "WAS", "QQYYSYPLT"}},
	},
	"Globo-H": {
		{Name: "GH-VK9", Heavy: []string{"GFSLSTSGMG", "IWWDDDK", "ARRGYYGSSWFAY"}, Light: []string{"SSVSY", "DTS", "FQGSGYPFT"}},
		{Name: "GH-MBr1", Heavy: []string{"GFTFSSYA", "ISGSGGST", "AKDRGYSSGWYYFDY"}, Light: []string{"QSISSY", "AAS", "QQSYSTPLT"}},
	},
	"GD2": {
		{Name: "GD2-14G2a", Heavy: []string{"GSSFTGYN", "IDPYYGGT", "VSGMEY"}, Light: []string{"QSLVHRNGNTY", "KVS", "SQSTHVPPLT"}},
		{Name: "GD2-hu3F8", Heavy: []string{"GFSLTSYG", "IWAGGST", "ARRSDDYSWFAY"}, Light: []string{"QSVSNDV", "YAS", "QQDYSSPWT"}},
	},
	"Lewis-Y": {
		{Name: "LeY-3S193", Heavy: []string{"GFTFSDYY", "IRNKANGYTT", "ARGLAY"}, Light: []string{"SSVSY", "DTS", "QQWSSNPLT"}},
		{Name: "LeY-BR96", Heavy: []string{"GFTFSDYY", "ISNGGGST", "ARGLDDGAWFAY"}, Light: []string{"QSIVHSNGNTY", "KVS", "FQGSHVPFT"}},
	},
}
